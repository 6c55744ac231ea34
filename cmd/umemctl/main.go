// Command umemctl drives a umem allocator from the command line.
package main

func main() {
	execute()
}
