package main

import "github.com/saadjs/drinklog/cmd/drinklog"

func main() {
	drinklog.Execute()
}
