package domain

type Member struct {
	ID      string // m0001, m0002, ...
	Name    string
	Phone   string
	Email   string
	Address string
}
