/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of this module.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals, keywords and regular
expressions. Package lexmach is opinionated on how to do the setup of lexmachine.
Clients who need more liberty in how to create the scanner should use their
own wrapper code to fit lexmachine into the scanner.Tokenizer interface.

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[a-z]+`), lexmach.MakeToken("ID", 'i'))
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
	}
	LM, err := lexmach.NewLMAdapter(init, []string{"+", "*", "(", ")"}, nil, tokenIds)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("a + b * c")
	tokens := scanner.Collect(scan)

Input which lexmachine is unable to match is reported to the scanner's error handler
and delivered as a token of type pda.ErrorToken. Input is never dropped silently.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
