// Command nimbus-demo writes one line at every level to the console and to
// logs/main.log.
package main

import (
	"fmt"
	"log"

	"github.com/abyssdigger/nimbus"
)

func main() {
	logger := nimbus.Init()
	if err := logger.Setup_with_err("main.go"); err != nil {
		fmt.Println("Console only:", err)
	}
	defer logger.Close()

	logger.Debug("This is a debug message.")
	logger.Info("Hello from Go!")
	logger.Warn("This is a warning.")
	logger.Error("An error occurred: code %d", 404)
	logger.Critical("Critical issue detected.")
	logger.Fatal("Fatal crash imminent!")

	fmt.Fprintf(logger.Lvl(nimbus.LVL_INFO), "written through io.Writer by %s", "fmt.Fprintf")
	std := log.New(logger.Lvl(nimbus.LVL_WARN), "", 0)
	std.Println("written through the standard log package")

	fmt.Println("Session file:", logger.SessionPath())
}
