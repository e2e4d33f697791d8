package ranking

import "errors"

var (
	// ErrNoData 조회 결과 없음
	ErrNoData = errors.New("no ranking data")

	// ErrInvalidTable 테이블 식별자가 허용 패턴과 다름
	ErrInvalidTable = errors.New("invalid table identifier")

	// ErrUnsupportedDriver 알 수 없는 warehouse driver
	ErrUnsupportedDriver = errors.New("unsupported warehouse driver")
)
