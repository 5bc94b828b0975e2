// Command atlas prints the schema for atlas migrate diff:
//
//	atlas migrate diff --env gorm
package main

import (
	"fmt"
	"io"
	"os"
	"travelhub/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(models.All()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
