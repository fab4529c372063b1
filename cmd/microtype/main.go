// Command microtype generates distinct Go wrapper types from compact
// declaration files.
//
//	microtype generate ./schema
//	microtype describe ./schema
//	microtype watch ./schema
package main

func main() {
	Execute()
}
