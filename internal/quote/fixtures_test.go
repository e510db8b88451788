package quote_test

import (
	"fmt"
	"strings"
)

// legacyLine renders one legacy-feed record with the given fields at their offsets
func legacyLine(code string, size int, fields map[int]string) string {
	parts := make([]string, size)
	for i := range parts {
		parts[i] = "0"
	}
	for i, v := range fields {
		parts[i] = v
	}
	return fmt.Sprintf("var hq_str_%s=\"%s\";\n", code, strings.Join(parts, ","))
}

func mainlandLine() string {
	return legacyLine("sh000001", 33, map[int]string{
		0: "上证指数", 1: "10.50", 2: "10.00", 3: "11.00", 4: "11.20", 5: "10.40",
		8: "12345678", 9: "98765", 30: "2022-01-05", 31: "15:00:03",
	})
}

func usLine(code string) string {
	return legacyLine(code, 30, map[int]string{
		0: "苹果", 1: "182.01", 5: "179.61", 6: "182.88", 7: "178.93", 10: "104487900", 26: "179.70",
	})
}

const futuresLine = "var hq_str_V2201=\"PVC2201,230000,8585.00,8692.00,8467.00,8641.00,8673.00,8674.00,8675.00,8630.00,8821.00,109,2,289274,230643,连,PVC,2022-01-05,1\";\n"

const hkBody = `{
  "data": {"items": [
    {"quote": {"symbol": "00700", "code": "00700", "name": "腾讯控股", "open": 480.2, "last_close": 478.6,
               "current": 485, "high": 488.8, "low": 476.4, "volume": 15234567, "amount": 7345678901.5}},
    {"quote": {"symbol": "HKHSI", "code": "HSI", "name": "恒生指数", "current": 23000.12}}
  ]},
  "error_code": 0,
  "error_description": ""
}`

const hkErrorBody = `{"data": null, "error_code": 400016, "error_description": "bad symbol"}`

func hkSingleBody(symbol string) string {
	return fmt.Sprintf(`{"data":{"items":[{"quote":{"symbol":%q,"code":%q,"name":"x","open":1,"last_close":1,"current":1.1,"high":1.2,"low":0.9}}]},"error_code":0}`, symbol, symbol)
}
