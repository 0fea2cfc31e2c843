/*
Copyright © 2021 the Gasify authors.
This file is part of Gasify.

Gasify is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gasify is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gasify.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command gasify is a command-line interface for gas mixture, flow and
// humidity calculations.
package main

import (
	"fmt"
	"os"

	"github.com/swinburne-sensing/gasify/gasifyutil"
)

func main() {
	if err := gasifyutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
