package shipping

// Address ウォレットが通知する配送先（一部のみ）
type Address struct {
	CountryCode string
	AdminArea1  string
	AdminArea2  string
	PostalCode  string
}

// Selection ウォレットからの配送先・配送方法の選択内容
type Selection struct {
	Address          *Address
	SelectedOptionID string
}

// IsEmpty 選択内容が何もないか
func (s Selection) IsEmpty() bool {
	return s.Address == nil && s.SelectedOptionID == ""
}
