// Command skema validates JSON and YAML documents against schema documents.
package main

func main() {
	Execute()
}
