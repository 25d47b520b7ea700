// Command brkctl drives a brkalloc heap from the command line.
package main

func main() {
	execute()
}
