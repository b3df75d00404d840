package main

import "github.com/Yaara40/academic-department-website-sub000/cmd"

func main() {
	cmd.Execute()
}
