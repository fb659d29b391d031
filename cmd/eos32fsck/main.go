// Command eos32fsck checks an EOS32 filesystem embedded in a raw disk
// image for structural consistency, without modifying the image.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
