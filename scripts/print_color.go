package main

import "fmt"

// ANSI 顏色，只用在 task 輸出
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func printColor(color, msg string) { fmt.Printf("%s%s%s\n", color, msg, colorReset) }

func PrintRed(msg string)    { printColor(colorRed, msg) }
func PrintGreen(msg string)  { printColor(colorGreen, msg) }
func PrintYellow(msg string) { printColor(colorYellow, msg) }
