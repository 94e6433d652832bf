package cache

import (
	"time"
)

// TimeUntilNextMidnight は次のローカル時刻の午前0時までの期間を返します。
// 日次の再生成でシリーズが入れ替わるタイミングに合わせます。
func TimeUntilNextMidnight() time.Duration {
	return untilNextMidnight(time.Now())
}

func untilNextMidnight(now time.Time) time.Duration {
	// 翌日の午前0時を計算
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
