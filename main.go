/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "rewards/cmd"

func main() {
	cmd.Execute()
}
