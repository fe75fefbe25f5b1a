package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// asciiArtTpl returns the ASCII art of driversdb.
func asciiArtTpl() string {
	asciiArt := `
     _      _                     _ _
  __| |_ __(_)_   _____ _ __ ___ | | |__
 / _' | '__| \ \ / / _ \ '__/ __|/ _' | '_ \
| (_| | |  | |\ V /  __/ |  \__ \ (_| | |_) |
 \__,_|_|  |_| \_/ \___|_|  |___/\__,_|_.__/
%s ` + Version

	asciiArt = asciiArt[1:]                          // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset // Add color to the ASCII art

	return asciiArt
}

// Banner returns the colored ASCII art printed when the demo starts.
func Banner() string {
	return fmt.Sprintf(asciiArtTpl(), "SQLite demo")
}

// CLIVersion returns the plain version line used by --version.
func CLIVersion() string {
	return "driversdb " + Version
}
