// Command bnstruct-learn runs BIC hill-climbing structure learning over
// a CSV data set and prints the learned network in bnlearn notation.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/JohnPierman/bnstruct/climb"
	"github.com/JohnPierman/bnstruct/loader"
	"github.com/JohnPierman/bnstruct/network"
	"github.com/JohnPierman/bnstruct/score"
)

func main() {
	dataPath := flag.String("data", "", "path to the CSV data file")
	domainPath := flag.String("domains", "", "path to the domain spec file (name:value1,value2,...; one variable per line)")
	flag.Parse()

	if *dataPath == "" || *domainPath == "" {
		log.Fatal("bnstruct-learn: both -data and -domains are required")
	}

	specs, err := readDomainSpec(*domainPath)
	if err != nil {
		log.Fatalf("bnstruct-learn: reading domain spec: %v", err)
	}

	vars, matrix, err := loader.Load(*dataPath, specs)
	if err != nil {
		log.Fatalf("bnstruct-learn: loading data: %v", err)
	}
	log.Printf("loaded %d rows over %d variables", len(matrix), len(vars))

	net, err := network.New(vars)
	if err != nil {
		log.Fatalf("bnstruct-learn: constructing network: %v", err)
	}

	cache := score.NewCache()
	initial, err := score.NetworkBIC(net, matrix, cache)
	if err != nil {
		log.Fatalf("bnstruct-learn: scoring initial network: %v", err)
	}
	log.Printf("initial BIC: %.6f", initial)

	result, err := climb.Run(net, matrix, cache)
	if err != nil {
		log.Fatalf("bnstruct-learn: hill-climbing: %v", err)
	}
	log.Printf("converged after %d move(s), improvement %.6f", result.Iterations, result.Improvement)

	final, err := score.NetworkBIC(net, matrix, cache)
	if err != nil {
		log.Fatalf("bnstruct-learn: scoring final network: %v", err)
	}
	log.Printf("final BIC: %.6f", final)
	log.Printf("learned structure: %s", net.String())
}

// readDomainSpec parses one variable per non-blank line of the form
// "name:value1,value2,...", in the order variables should be indexed.
func readDomainSpec(path string) ([]loader.VariableSpec, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	specs := make([]loader.VariableSpec, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		specs = append(specs, loader.VariableSpec{
			Name:   strings.TrimSpace(name),
			Values: strings.Split(rest, ","),
		})
	}
	return specs, nil
}

func readLines(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(contents), "\n"), nil
}
