package pipeline

import (
	"github.com/ExpiredOTM/RealityCheck/pkg/detector/distortion"
	"github.com/ExpiredOTM/RealityCheck/pkg/detector/rage"
	"github.com/ExpiredOTM/RealityCheck/pkg/sentiment"
)

// Aggregate folds many records into one: element-wise mean of sentiment
// fields and confidence, concatenated indicator lists, and summed processing
// time. Nil slots are skipped. Empty input yields an explicit zero record,
// never an error.
func Aggregate(records []*Record) Record {
	var (
		agg      Record
		count    int
		valence  float64
		arousal  float64
		conf     float64
		readConf float64
	)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		count++
		valence += rec.Sentiment.Valence
		arousal += rec.Sentiment.Arousal
		readConf += rec.Sentiment.Confidence
		conf += rec.Confidence
		agg.ProcessingTimeMs += rec.ProcessingTimeMs
		agg.Distortions = append(agg.Distortions, rec.Distortions...)
		agg.Rage = append(agg.Rage, rec.Rage...)
	}

	if count == 0 {
		return Record{
			Distortions: []distortion.Indicator{},
			Rage:        []rage.Indicator{},
		}
	}

	n := float64(count)
	agg.Sentiment = sentiment.Reading{
		Valence:    valence / n,
		Arousal:    arousal / n,
		Confidence: readConf / n,
	}
	agg.Confidence = conf / n
	return agg
}
