/*
Package jetcsv decodes delimited text into strongly typed Go records, and
encodes records back into delimited text. The API mirrors encoding/json.

The decoder is a character-by-character scanner with two states, unquoted
and quoted. It is deliberately permissive: every input produces a result,
and malformed input is absorbed rather than rejected unless the Strict
option is given.

Example of decoding into a struct:

	type Row struct {
		ID   int    `csv:"id"`
		Name string `csv:"name"`
	}

	res, err := jetcsv.Decode[Row]("id,name\n1,Ada\n2,Grace", jetcsv.Headers(jetcsv.FirstRow))
	if err != nil {
		// invalid option or record type
	}
	// res.Headers is ["id", "name"], res.Records holds two rows.

Headers are taken from the first line (FirstRow), never taken (NoHeader),
or detected (AutoDetect, the default): the first line is headers unless
the raw text before the first delimiter is a bare number. Columns without a
name are called Column1, Column2 and so on.

Quoting follows the usual conventions with a few quirks kept for
compatibility:

  - Two quotes inside a quoted value decode to one literal quote. A quote
    preceded by a backslash is also literal; the backslash is kept and
    the character after the quote is skipped, unless Strict is given.
  - A quote anywhere in an unquoted field opens a quoted value. Strict
    rejects this with ErrBareQuote.
  - A quoted value may span lines. The line break itself is dropped unless
    PreserveNewlines is given.
  - A value left unterminated at the end of the input is discarded. Strict
    reports it with ErrUnterminatedQuote.

Values are trimmed and then converted into the type of the target field:
strings, integers, floats, booleans, time.Time, time.Duration, pointers and
encoding.TextUnmarshaler implementations are supported. Fields are matched
by the `csv` struct tag, or the Go field name when untagged, with a
case-insensitive fallback. Fields of embedded structs are promoted the way
Go promotes them. Records may also be maps with string keys, or implement
FieldSetter to bind values themselves.
*/
package jetcsv
