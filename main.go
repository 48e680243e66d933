package main

import (
	"os"

	"github.com/wazuh/devenv-ctl/cmd"
	"github.com/wazuh/devenv-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
