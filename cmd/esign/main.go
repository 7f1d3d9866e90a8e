// esign is the operator CLI for the e-signature gateway: it generates
// assertion signing keys and sends documents for signature from the command
// line.
package main

import "github.com/information-sharing-networks/esign-gateway/app/internal/cli"

func main() {
	cli.Execute()
}
