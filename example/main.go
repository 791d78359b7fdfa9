// FILE: example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/propfile"
)

// ServerConfig holds the tunable knobs for the demo server.
type ServerConfig struct {
	Port       int32   `comment:"TCP port to listen on"`
	MaxClients int16   `prop:"MAX_CLIENTS" comment:"Connection cap, hex in file"`
	Throttle   float64 `comment:"Requests per second per client"`
	Verbose    bool
	AllowedIDs []int32  `prop:"ALLOWED_IDS"`
	MOTDLines  []string `prop:"MOTD" comment:"Shown on connect|one element per line fragment"`
}

func (c *ServerConfig) ConfigComments() []string {
	return []string{"Demo server configuration.", "Edit and restart to apply."}
}

func main() {
	dir, err := os.MkdirTemp("", "propfile-demo")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "server.properties")

	cfg := &ServerConfig{
		Port:       8080,
		MaxClients: 64,
		Throttle:   2.5,
		Verbose:    true,
		AllowedIDs: []int32{10, 20, 30},
		MOTDLines:  []string{"hello", "world"},
	}

	mgr, res, err := propfile.Quick(path, cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("created=%v failed=%d\n", res.Created, res.Failed)

	data, _ := os.ReadFile(path)
	fmt.Println(string(data))

	// Mutate and persist.
	cfg.Port = 9090
	cfg.MaxClients = 0xFF
	if err := mgr.Save(); err != nil {
		log.Fatal(err)
	}

	// Export a snapshot for tooling that wants structured formats.
	if err := mgr.ExportFile(filepath.Join(dir, "server.toml")); err != nil {
		log.Fatal(err)
	}

	data, _ = os.ReadFile(path)
	fmt.Println(string(data))
}
