/*
Package pda is a toolbox for table-driven deterministic parsing.

It computes FIRST and FOLLOW sets over context-free grammars, builds
predictive (LL(1)) parse tables with conflict detection, and drives two
pushdown automata: a predictive parser working from such a table and a
shift-reduce parser working from externally supplied ACTION/GOTO tables.
Both automata record a replayable trace of every configuration they pass
through. Package structure is as follows:

■ lr: Package lr holds grammars and grammar analysis (FIRST/FOLLOW), together
with sub-packages for LL(1) tables and parsing, shift-reduce parsing,
sparse table storage, parse traces and scanners.

■ runtime: Package runtime provides per-session registries for identifiers and
constants encountered by scanners.

■ exprlang: Package exprlang bundles the arithmetic expression language used for
demonstrations, together with the command line tool pdatrace.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pda
