package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("platesight %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("platesight - license plate detection and classification")
			fmt.Println()
			fmt.Println("Usage: platesight [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -image <path>    Detect plates in a single image")
			fmt.Println("  -frames <dir>    Detect plates across a directory of frames")
			fmt.Println("  -serve           Run the HTTP detection API")
			fmt.Println("  -addr <addr>     Listen address for -serve (default :8080)")
			fmt.Println("  -lang <code>     Tesseract language code (default eng)")
			fmt.Println("  -out <dir>       Where to write annotated frames (default .)")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PLATESIGHT_ADDR            Listen address for -serve")
			fmt.Println("  PLATESIGHT_OCR_LANG        Tesseract language code")
			fmt.Println("  PLATESIGHT_LOG_LEVEL=debug Enable debug logging")
			return
		}
	}

	// Logging goes to stderr; stdout carries the detection records.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A local .env is optional.
	_ = godotenv.Load()

	cli := NewCLI()
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatalf("platesight: %v", err)
	}
}
