// Command benchctl runs BenchTrack maintenance tasks and the MCP stdio
// servers.
package main

func main() {
	Execute()
}
