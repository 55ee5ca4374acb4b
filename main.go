// Command babelpipe fetches pages from, and searches, a Library of Babel
// style text archive.
package main

import "github.com/gaurav-prasanna/babelpipe/cmd"

func main() {
	cmd.Execute()
}
