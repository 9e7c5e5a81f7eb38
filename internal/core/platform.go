package core

import "runtime"

// ToolName maps a build tool's canonical name to the binary name used on the
// current platform. Maven ships as a batch script on Windows, so spawning
// "mvn" there fails even when Maven is installed.
func ToolName(name string) string {
	if runtime.GOOS != "windows" {
		return name
	}
	switch name {
	case "mvn":
		return "mvn.cmd"
	case "gradle":
		return "gradle.bat"
	default:
		return name
	}
}
