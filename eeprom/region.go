package eeprom

// Region is the console sales region stored in the protected block.
type Region uint32

// Known region codes.
const (
	RegionNorthAmerica Region = 0x01
	RegionJapan        Region = 0x02
	RegionEurope       Region = 0x04
)

func (r Region) String() string {
	switch r {
	case RegionNorthAmerica:
		return "North America"
	case RegionJapan:
		return "Japan"
	case RegionEurope:
		return "Europe"
	default:
		return "Unknown"
	}
}
