package native

import (
	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/frame"
	"github.com/tomasz-nowicki/rebo/internal/parse"
	"github.com/tomasz-nowicki/rebo/internal/tokenize"
	"github.com/tomasz-nowicki/rebo/internal/value"
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

// NativeTokenize implements "tokenize": split a string into a block of
// token objects ({type value line column}), mirroring each token the
// scanner would have handed the parser.
func NativeTokenize(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("tokenize", 1, len(args))
	}

	inputVal, ok := value.AsStringValue(args[0])
	if !ok {
		return value.NewNoneVal(), typeError("tokenize", "string!", args[0])
	}

	tokens, err := tokenize.NewTokenizer(inputVal.String()).Tokenize()
	if err != nil {
		return value.NewNoneVal(), verror.NewScriptError(verror.ErrIDInvalidToken, [3]string{"tokenize", err.Error(), ""})
	}

	result := make([]core.Value, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == tokenize.TokenEOF {
			continue
		}
		result = append(result, tokenObjectFor(tok))
	}

	return value.NewBlockVal(result), nil
}

func tokenObjectFor(tok tokenize.Token) core.Value {
	objFrame := frame.NewFrame(frame.FrameObject, -1)

	objFrame.Bind("type", value.NewWordVal(tokenTypeName(tok.Type)))
	objFrame.Bind("value", value.NewStrVal(tok.Value))
	objFrame.Bind("line", value.NewIntVal(int64(tok.Line)))
	objFrame.Bind("column", value.NewIntVal(int64(tok.Column)))

	obj := value.NewObject(objFrame, value.ObjectManifest{Words: []string{"type", "value", "line", "column"}})
	return value.ObjectVal(obj)
}

func tokenTypeName(t tokenize.TokenType) string {
	switch t {
	case tokenize.TokenLiteral:
		return "literal"
	case tokenize.TokenString:
		return "string"
	case tokenize.TokenBinary:
		return "binary"
	case tokenize.TokenLParen:
		return "lparen"
	case tokenize.TokenRParen:
		return "rparen"
	case tokenize.TokenLBracket:
		return "lbracket"
	case tokenize.TokenRBracket:
		return "rbracket"
	case tokenize.TokenEOF:
		return "eof"
	default:
		return "unknown"
	}
}

func tokenTypeFromName(name string) tokenize.TokenType {
	switch name {
	case "string":
		return tokenize.TokenString
	case "binary":
		return tokenize.TokenBinary
	case "lparen":
		return tokenize.TokenLParen
	case "rparen":
		return tokenize.TokenRParen
	case "lbracket":
		return tokenize.TokenLBracket
	case "rbracket":
		return tokenize.TokenRBracket
	case "eof":
		return tokenize.TokenEOF
	default:
		return tokenize.TokenLiteral
	}
}

// NativeParseValues runs the semantic parser over a block of token objects
// (as produced by "tokenize") instead of over raw source text, letting
// scripts intercept and rewrite the token stream before it becomes values.
// It is reached through NativeParse; no word "parse-values" is bound.
func NativeParseValues(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("parse-values", 1, len(args))
	}

	tokensBlockVal, ok := value.AsBlockValue(args[0])
	if !ok {
		return value.NewNoneVal(), typeError("parse-values", "block!", args[0])
	}

	tokens, err := tokenObjectsToTokens(tokensBlockVal.Elements)
	if err != nil {
		return value.NewNoneVal(), err
	}

	values, perr := parse.NewParser(tokens).Parse()
	if perr != nil {
		if vErr, ok := perr.(*verror.Error); ok {
			return value.NewNoneVal(), vErr
		}
		return value.NewNoneVal(), verror.NewScriptError(verror.ErrIDInvalidToken, [3]string{"parse-values", perr.Error(), ""})
	}

	return value.NewBlockVal(values), nil
}

// NativeParse is the native bound to "parse"; it delegates to
// NativeParseValues.
func NativeParse(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return NativeParseValues(args, refValues, eval)
}

func tokenObjectsToTokens(tokenVals []core.Value) ([]tokenize.Token, error) {
	tokens := make([]tokenize.Token, 0, len(tokenVals)+1)

	for _, tokenVal := range tokenVals {
		obj, ok := value.AsObject(tokenVal)
		if !ok {
			return nil, verror.NewScriptError("type-mismatch", [3]string{"parse-values", "token object", value.TypeToString(tokenVal.GetType())})
		}

		typeVal, typeOk := obj.GetField("type")
		valueVal, valueOk := obj.GetField("value")
		lineVal, lineOk := obj.GetField("line")
		columnVal, columnOk := obj.GetField("column")
		if !typeOk || !valueOk || !lineOk || !columnOk {
			return nil, verror.NewScriptError("invalid-arg", [3]string{"parse-values", "token object must have type, value, line, and column fields", ""})
		}

		typeName := valueOrMold(typeVal)
		valueStr := valueOrMold(valueVal)

		lineInt, ok := value.AsIntValue(lineVal)
		if !ok {
			return nil, verror.NewScriptError("type-mismatch", [3]string{"parse-values", "token line must be integer", value.TypeToString(lineVal.GetType())})
		}
		columnInt, ok := value.AsIntValue(columnVal)
		if !ok {
			return nil, verror.NewScriptError("type-mismatch", [3]string{"parse-values", "token column must be integer", value.TypeToString(columnVal.GetType())})
		}

		tokens = append(tokens, tokenize.Token{
			Type:   tokenTypeFromName(typeName),
			Value:  valueStr,
			Line:   int(lineInt),
			Column: int(columnInt),
		})
	}

	tokens = append(tokens, tokenize.Token{Type: tokenize.TokenEOF})
	return tokens, nil
}

func valueOrMold(v core.Value) string {
	if s, ok := value.AsStringValue(v); ok {
		return s.String()
	}
	return v.Mold()
}

// NativeLoadString implements "load-string": parse a string into a block of
// values without evaluating it, the same engine the interpreter's own
// source loader uses.
func NativeLoadString(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("load-string", 1, len(args))
	}

	inputVal, ok := value.AsStringValue(args[0])
	if !ok {
		return value.NewNoneVal(), typeError("load-string", "string!", args[0])
	}

	values, perr := parse.Parse(inputVal.String())
	if perr != nil {
		return value.NewNoneVal(), perr
	}

	return value.NewBlockVal(values), nil
}

// NativeClassify implements "classify": report what datatype a single bare
// token would parse as, without tokenizing or parsing a whole program.
func NativeClassify(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("classify", 1, len(args))
	}

	inputVal, ok := value.AsStringValue(args[0])
	if !ok {
		return value.NewNoneVal(), typeError("classify", "string!", args[0])
	}

	val, err := parse.ClassifyLiteral(inputVal.String())
	if err != nil {
		if vErr, ok := err.(*verror.Error); ok {
			return value.NewNoneVal(), vErr
		}
		return value.NewNoneVal(), verror.NewScriptError(verror.ErrIDInvalidToken, [3]string{"classify", err.Error(), ""})
	}

	return val, nil
}
