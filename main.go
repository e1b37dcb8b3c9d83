// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/emilyeserven/npm-package-guide-sub003/cmd/glossary"

func main() {
	cmd.Execute()
}
