package main

import "github.com/course-registration/coursereg-web/cmd"

func main() {
	cmd.Execute()
}
