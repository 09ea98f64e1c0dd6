package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/sampler"
)

// readEdgesTSV parses "u<TAB>v" lines, skipping blanks and '#' comments.
// Returns the edges and the inferred node count (max id + 1).
func readEdgesTSV(path string) ([]graph.Edge, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var (
		edges   []graph.Edge
		maxNode int64 = -1
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, 0, fmt.Errorf("%s:%d: expected \"u\\tv\", got %q", path, line, text)
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		edges = append(edges, graph.Edge{U: u, V: v})
		if u > maxNode {
			maxNode = u
		}
		if v > maxNode {
			maxNode = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}

	return edges, maxNode + 1, nil
}

// writePairsTSV writes one "u<TAB>v" pair per line.
func writePairsTSV(path string, pairs [][2]int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, p := range pairs {
		fmt.Fprintf(w, "%d\t%d\n", p[0], p[1])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// readPairsTSV parses "u<TAB>v<TAB>y" candidate pairs; the third column is
// the link label (1 positive, 0 negative) and defaults to 1 when absent.
func readPairsTSV(path string) ([]sampler.CandidatePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []sampler.CandidatePair
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected \"u\\tv[\\ty]\", got %q", path, line, text)
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		positive := true
		if len(fields) >= 3 {
			y, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			positive = y != 0
		}
		pairs = append(pairs, sampler.CandidatePair{Src: u, Dst: v, Positive: positive})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

// loadConfig returns the YAML config at flagConfig, or defaults when the
// flag is unset.
func loadConfig() (sampler.Config, error) {
	if flagConfig == "" {
		return sampler.Default(), nil
	}

	return sampler.Load(flagConfig)
}
