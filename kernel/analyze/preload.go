package analyze

// Pull the stock bleve components into the registry so they are resolvable
// by name without an importing application having to know about them.
import (
	_ "github.com/blevesearch/bleve/analysis/analyzer/custom"
	_ "github.com/blevesearch/bleve/analysis/analyzer/keyword"
	_ "github.com/blevesearch/bleve/analysis/analyzer/simple"
	_ "github.com/blevesearch/bleve/analysis/analyzer/standard"
	_ "github.com/blevesearch/bleve/analysis/analyzer/web"
	_ "github.com/blevesearch/bleve/analysis/char/asciifolding"
	_ "github.com/blevesearch/bleve/analysis/char/html"
	_ "github.com/blevesearch/bleve/analysis/char/regexp"
	_ "github.com/blevesearch/bleve/analysis/char/zerowidthnonjoiner"
	_ "github.com/blevesearch/bleve/analysis/lang/en"
	_ "github.com/blevesearch/bleve/analysis/token/apostrophe"
	_ "github.com/blevesearch/bleve/analysis/token/camelcase"
	_ "github.com/blevesearch/bleve/analysis/token/edgengram"
	_ "github.com/blevesearch/bleve/analysis/token/elision"
	_ "github.com/blevesearch/bleve/analysis/token/keyword"
	_ "github.com/blevesearch/bleve/analysis/token/length"
	_ "github.com/blevesearch/bleve/analysis/token/lowercase"
	_ "github.com/blevesearch/bleve/analysis/token/ngram"
	_ "github.com/blevesearch/bleve/analysis/token/porter"
	_ "github.com/blevesearch/bleve/analysis/token/reverse"
	_ "github.com/blevesearch/bleve/analysis/token/shingle"
	_ "github.com/blevesearch/bleve/analysis/token/stop"
	_ "github.com/blevesearch/bleve/analysis/token/truncate"
	_ "github.com/blevesearch/bleve/analysis/token/unicodenorm"
	_ "github.com/blevesearch/bleve/analysis/token/unique"
	_ "github.com/blevesearch/bleve/analysis/tokenizer/letter"
	_ "github.com/blevesearch/bleve/analysis/tokenizer/single"
	_ "github.com/blevesearch/bleve/analysis/tokenizer/unicode"
	_ "github.com/blevesearch/bleve/analysis/tokenizer/whitespace"

	_ "github.com/relip/elasticsearch-extended-analyze/kernel/analyze/tokenfilter/recordterm"
)
