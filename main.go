package main

import (
	"github.com/danielhe4rt/bruin-ecommerce-pipeline/cmd"
)

func main() {
	cmd.Execute()
}
