package helper

var TransactionStatusNames = map[string]string{
	"0": "Sale",
	"1": "Initialize",
	"2": "Credit",
	"3": "Authorize",
	"4": "Cancel",
	"5": "Failure",
	"6": "Capture",
}

func GetTransactionStatusName(code string) string {
	if name, exists := TransactionStatusNames[code]; exists {
		return name
	}
	return "Unknown status " + code
}
