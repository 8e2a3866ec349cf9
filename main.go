package main

import "github.com/superblocksteam/gsheets/boilerplate"

func main() { boilerplate.RunMain(new(driver)) }
