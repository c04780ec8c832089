package main

import "github.com/wildabeast/cordova-android/cmd"

func main() {
	cmd.Execute()
}
