// File: lixenwraith/propfile/doc.go

// Package propfile bridges a plain-text key=value properties file and
// the fields of an application's configuration target, in either
// direction: on startup it materializes a new file from declared fields
// and defaults or parses an existing file back into them; on demand it
// serializes current values back to disk.
//
// Features:
//   - Line-oriented codec with typed coercion (int16 with 0x hex
//     literals, int32, float32/float64, bool, homogeneous lists)
//   - Doc-comment carry-through from struct tags to the file
//   - Best-effort loading with an exact failure count, or fail-fast
//     loading that stops at the first bad line
//   - Struct targets via reflection, or a process-wide Table registry
//   - Atomic saves with optional .bak retention of the prior version
//   - In-place updates that preserve comments and unknown entries
//   - Snapshot export to TOML, JSON or YAML for migration
//
// Quick Start:
//
//	type Settings struct {
//	    Port    int32   `comment:"TCP port to listen on"`
//	    Ratio   float64
//	    Debug   bool    `prop:"DEBUG"`
//	    Secret  string  `prop:"-"`
//	    Workers []int32
//	}
//
//	settings := &Settings{Port: 8080, Ratio: 1.5, Workers: []int32{2, 4}}
//	mgr, res, err := propfile.Quick("app.properties", settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Failed > 0 {
//	    log.Printf("%d config lines could not be applied", res.Failed)
//	}
//
//	// ... later, persist any changes:
//	settings.Port = 9090
//	if err := mgr.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// File format:
//
//	# comment line
//	Port=8080
//	Ratio=1.500000
//	DEBUG=false
//	Workers=[2, 4]
//
// Entries split on the first '='; whitespace around the '=' is
// insignificant; lines whose trimmed form starts with '#' and blank
// lines are skipped on read. File order is free on read; writes always
// follow field declaration order.
//
// Concurrency:
// A Manager is synchronous and single-threaded. Concurrent writers to
// the same file or target are not supported.
package propfile
