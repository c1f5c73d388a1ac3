// Package guesslang identifies the natural language of short text samples.
//
// Detection runs in three steps. The characters of the text are profiled by
// Unicode block; an ordered list of script rules either answers directly
// (Hangul is Korean, Thai is Thai) or narrows the answer to a group of
// languages sharing a script; the group is then ranked by trigram distance
// against per-language models and the closest language wins.
//
// Basic usage:
//
//	code := guesslang.Detect("Hello, how are you today?") // "en"
//	info := guesslang.IdentifyInfo(text)                   // {Code, ID, Name}
//
// A configured detector adds caching, metrics and content processors:
//
//	import (
//	    "github.com/ZaguanLabs/guesslang"
//	    "github.com/ZaguanLabs/guesslang/cache"
//	    "github.com/ZaguanLabs/guesslang/processor"
//	)
//
//	d := guesslang.NewDetector(
//	    guesslang.WithResultCache(cache.NewInMemoryCache(3600)),
//	    guesslang.WithProcessor(processor.NewHTMLProcessor()),
//	)
//	res, err := d.Process("<p>Bonjour tout le monde</p>", "html")
//
// Text that cannot be identified yields "unknown"; detection never fails.
package guesslang
