package enum

// CustomerSource records how a customer entered the system
type CustomerSource string

const (
	CustomerSourceAdmin CustomerSource = "admin"
	CustomerSourceExcel CustomerSource = "excel"
)

func (s CustomerSource) String() string {
	return string(s)
}
