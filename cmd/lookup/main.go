// Command lookup is a minimal front-end over divvunspell-core: it
// loads a lexicon/mutator transducer pair and reports is_correct and
// suggest results for each word read from stdin or the command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	divvunspell "github.com/divvun/divvunspell-core"
)

func main() {
	lexiconPath := flag.String("lexicon", "", "path to the lexicon (acceptor) binary")
	mutatorPath := flag.String("mutator", "", "path to the mutator (error model) binary")
	nBest := flag.Int("n", 5, "max suggestions per word")
	caseHandling := flag.Bool("case", true, "enable case-handling dispatch")
	flag.Parse()

	if *lexiconPath == "" || *mutatorPath == "" {
		glog.Fatal("both -lexicon and -mutator are required")
	}

	lexiconFile, err := divvunspell.OpenMappedFile(*lexiconPath)
	if err != nil {
		glog.Fatal("opening lexicon: ", err)
	}
	defer lexiconFile.Close()

	mutatorFile, err := divvunspell.OpenMappedFile(*mutatorPath)
	if err != nil {
		glog.Fatal("opening mutator: ", err)
	}
	defer mutatorFile.Close()

	lexicon, err := divvunspell.NewTransducer(lexiconFile.Bytes())
	if err != nil {
		glog.Fatal("parsing lexicon: ", err)
	}
	mutator, err := divvunspell.NewTransducer(mutatorFile.Bytes())
	if err != nil {
		glog.Fatal("parsing mutator: ", err)
	}

	cfg := divvunspell.DefaultSpellerConfig()
	cfg.NBest = nBest
	cfg.CaseHandling = *caseHandling

	speller, err := divvunspell.NewSpeller(lexicon, mutator, cfg)
	if err != nil {
		glog.Fatal("building speller: ", err)
	}

	words := flag.Args()
	if len(words) > 0 {
		for _, w := range words {
			lookup(speller, w)
		}
		return
	}

	start := time.Now()
	scanner := bufio.NewScanner(os.Stdin)
	n := 0
	for scanner.Scan() {
		lookup(speller, scanner.Text())
		n++
	}
	if err := scanner.Err(); err != nil {
		glog.Fatal("reading stdin: ", err)
	}
	glog.Infof("looked up %d words in %v", n, time.Since(start))
}

func lookup(speller *divvunspell.Speller, word string) {
	correct := speller.IsCorrect(word)
	fmt.Printf("%s\tcorrect=%v\n", word, correct)
	if correct {
		return
	}
	for _, s := range speller.Suggest(word) {
		fmt.Printf("\t%s\t%g\n", s.Value, s.Weight)
	}
}
