// Command vetchat is a terminal chat with Dr. Damyar, a veterinary assistant.
package main

import "github.com/damyar/vetchat/internal/commands"

func main() {
	commands.Execute()
}
