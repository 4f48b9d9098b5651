// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	itm "github.com/YindSoft/itm-purego"
	"go.uber.org/zap"
)

func findLibrary() string {
	// Look for the library under lib/ in the current dir, then the parent
	// (for running from example/).
	if _, err := os.Stat(itm.DefaultPath); err == nil {
		return itm.DefaultPath
	}
	if p := filepath.Join("..", itm.DefaultPath); fileExists(p) {
		return p
	}
	return itm.DefaultPath
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	lib, err := itm.Open(&itm.Options{Path: findLibrary(), Logger: logger})
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer lib.Close()

	fmt.Println("**** ITM Library ***********************************")
	fmt.Printf("    Version:      %g\n", lib.Version())
	fmt.Println("****************************************************")

	res, err := lib.PointToPoint(itm.PointToPointParams{
		Elevation:    []float64{3, 10, 0, 10, 20, 0},
		TxHeight:     5,
		RxHeight:     6,
		Dielectric:   15,
		Conductivity: 0.005,
		Refractivity: 301,
		FrequencyMHz: 1500,
		Climate:      5,
		Polarization: 1,
		Confidence:   0.5,
		Reliability:  0.5,
	})
	if err != nil {
		log.Fatalf("point_to_point: %v", err)
	}
	fmt.Printf("dbloss: %g\n", res.Loss)
	fmt.Printf("strmode: %s\n", res.Mode)
	fmt.Printf("errnum: %d\n", res.ErrNum)
}
