// Copyright © 2021 One Concern

package main

import (
	"github.com/oneconcern/metasync/cmd/metasync/cmd"
)

func main() {
	cmd.Execute()
}
