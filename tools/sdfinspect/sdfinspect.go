package main

import (
	"flag"
	"log"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mogaika/mesh2sdf/web"
)

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func main() {
	var addr, webPath string
	var noopen bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&webPath, "web", "web", "Path to web resources")
	flag.BoolVar(&noopen, "noopen", false, "Do not open the browser automatically")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Provide path to a descriptor file. Use --help if you stuck.")
	}

	scene, err := web.LoadScene(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %q: %d geometries", flag.Arg(0), len(scene.Geometries))

	if !noopen {
		url := addr
		if strings.HasPrefix(url, ":") {
			url = "localhost" + url
		}
		openBrowser("http://" + url)
	}

	if err := web.StartServer(addr, scene, webPath); err != nil {
		log.Fatal(err)
	}
}
