/*
Package combi is a lexerless combinator parser engine.

Combi builds parsers by assembling an in-memory graph of rules and token
patterns, then compiles the graph into an executable parser that produces a
structured parse tree over a string input. There is no separate lexer/tokenizer
phase: token patterns are leaf matchers that read directly from the raw input,
and rules are composite matchers layered over tokens and other rules.

Package structure is as follows:

■ token: leaf matchers over the raw input character sequence (literals,
keywords, numbers, regular expressions, identifiers, …).

■ rule: composite matchers over tokens and other rules, building a tree of
parsed-rule AST nodes.

■ build: the canonicalize / deduplicate / index / specialize pipeline that
turns a buildable grammar description into an immutable, executable parser.

■ exec: the parse driver — the per-call context, skip strategies, error
recovery strategies, barrier tokens, and the memoization cache.

■ ast: the lazy/light result facade over parsed-rule records, plus the
tree-optimization post-processing pass.

■ incremental: single-edit reparse of an existing parse tree.

■ scan: a side entry exposing a rule as a "find all matches" scanner.

The base package (this one) contains data types used throughout the other
packages: input spans and the shared match-failure sentinel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package combi
