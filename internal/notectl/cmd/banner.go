package cmd

import (
	"fmt"

	"github.com/kiosk404/echonote/pkg/version"
)

const bannerText = `
            _                       _
   ___  ___| |__   ___  _ __   ___ | |_ ___
  / _ \/ __| '_ \ / _ \| '_ \ / _ \| __/ _ \
 |  __/ (__| | | | (_) | | | | (_) | ||  __/
  \___|\___|_| |_|\___/|_| |_|\___/ \__\___|
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
