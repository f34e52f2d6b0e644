/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/Tedomi2525/My-project/cmd"

func main() {
	cmd.Execute()
}
