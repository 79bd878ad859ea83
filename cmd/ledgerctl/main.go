// Command ledgerctl runs maintenance tasks against the stats ledger database.
package main

func main() {
	Execute()
}
