package quote

import "strings"

const (
	futuresTag = "cnf_"
	hkTag      = "hk"
)

// Partition is the classifier output: codes rewritten for their provider
type Partition struct {
	Legacy []string // mainland, US, futures (legacy text feed)
	JSON   []string // Hong Kong (JSON feed)
}

// Empty reports whether nothing needs fetching
func (p Partition) Empty() bool {
	return len(p.Legacy) == 0 && len(p.JSON) == 0
}

// Classify splits raw codes by provider.
//   - "cnf_" is stripped (futures are looked up bare)
//   - "hk" codes go to the JSON feed without the prefix; "hk0" equities keep their digits,
//     anything else is treated as an index and upper-cased ("hk00700" -> "00700", "hkHSI" -> "HSI")
//   - everything else goes to the legacy feed verbatim
//
// ⭐ SSOT: 종목 코드 분류는 이 함수에서만
func Classify(codes []string) Partition {
	var p Partition
	for _, code := range codes {
		code = strings.TrimSpace(code)
		code = strings.TrimPrefix(code, futuresTag)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, hkTag) {
			if rest := code[len(hkTag):]; rest != "" {
				p.JSON = append(p.JSON, hkRequestSymbol(rest))
				continue
			}
		}

		p.Legacy = append(p.Legacy, code)
	}
	return p
}

func hkRequestSymbol(rest string) string {
	if rest[0] == '0' {
		return rest
	}
	return strings.ToUpper(rest)
}

// HKCanonical turns a JSON-feed code back into the caller's form ("00700" -> "hk00700")
func HKCanonical(symbol string) string {
	if strings.HasPrefix(symbol, "HK") {
		return hkTag + symbol[2:]
	}
	return hkTag + symbol
}
