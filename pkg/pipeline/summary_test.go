package pipeline

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ExpiredOTM/RealityCheck/pkg/detector/distortion"
	"github.com/ExpiredOTM/RealityCheck/pkg/detector/rage"
	"github.com/ExpiredOTM/RealityCheck/pkg/sentiment"
)

var _ = Describe("Summarize", func() {
	var p *Pipeline

	BeforeEach(func() {
		var err error
		p, err = New(degradedConfig(), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("handles a nil record", func() {
		summary := p.Summarize(nil)
		Expect(summary.Sentiment).To(Equal("neutral"))
		Expect(summary.RiskLevel).To(Equal("low"))
		Expect(summary.RiskScore).To(BeZero())
		Expect(summary.PrimaryConcerns).To(BeEmpty())
		Expect(summary.Recommendation).To(ContainSubstring("No significant concerns"))
	})

	DescribeTable("labels sentiment from valence and arousal",
		func(valence, arousal float64, want string) {
			rec := &Record{Sentiment: sentiment.Reading{Valence: valence, Arousal: arousal}}
			Expect(p.Summarize(rec).Sentiment).To(Equal(want))
		},
		Entry("positive", 0.5, 0.2, "positive"),
		Entry("negative", -0.5, 0.2, "negative"),
		Entry("neutral", 0.1, 0.2, "neutral"),
		Entry("boundary valence is neutral", 0.3, 0.2, "neutral"),
		Entry("high arousal suffix", -0.5, 0.7, "negative (high arousal)"),
		Entry("neutral with high arousal", 0.0, 0.9, "neutral (high arousal)"),
	)

	It("orders primary concerns deterministically", func() {
		rec := &Record{
			Sentiment: sentiment.Reading{Valence: -0.6, Arousal: 0.9, Confidence: 0.8},
			Distortions: []distortion.Indicator{
				{Category: distortion.CategoryPersecution, Severity: 0.8, MatchedText: "watching me"},
			},
			Rage: []rage.Indicator{
				{Category: rage.CategoryThreat, Intensity: 0.9, MatchedText: "you will pay for this"},
			},
		}
		summary := p.Summarize(rec)
		Expect(summary.PrimaryConcerns).To(Equal([]string{
			"cognitive distortion: persecution",
			"hostile language",
			"elevated arousal",
		}))
	})

	It("names the dominant distortion category", func() {
		rec := &Record{
			Distortions: []distortion.Indicator{
				{Category: distortion.CategoryAllOrNothing, Severity: 0.55},
				{Category: distortion.CategoryCatastrophizing, Severity: 0.75},
			},
		}
		summary := p.Summarize(rec)
		Expect(summary.PrimaryConcerns).To(ContainElement("cognitive distortion: catastrophizing"))
	})

	It("keys the recommendation off the risk level", func() {
		rec := &Record{
			Sentiment: sentiment.Reading{Valence: -0.9, Arousal: 0.9, Confidence: 0.9},
			Rage: []rage.Indicator{
				{Category: rage.CategoryThreat, Intensity: 0.9},
				{Category: rage.CategoryVerbalAggression, Intensity: 0.65},
			},
		}
		summary := p.Summarize(rec)
		Expect(summary.RiskLevel).NotTo(Equal("low"))
		Expect(summary.Recommendation).NotTo(ContainSubstring("No significant concerns"))
	})
})

var _ = Describe("Aggregate", func() {
	It("returns an explicit zero record for empty input", func() {
		agg := Aggregate(nil)
		Expect(agg.Sentiment.IsZero()).To(BeTrue())
		Expect(agg.Distortions).NotTo(BeNil())
		Expect(agg.Distortions).To(BeEmpty())
		Expect(agg.Rage).NotTo(BeNil())
		Expect(agg.Rage).To(BeEmpty())
		Expect(agg.Confidence).To(BeZero())
	})

	It("skips nil slots", func() {
		agg := Aggregate([]*Record{nil, nil})
		Expect(agg.Sentiment.IsZero()).To(BeTrue())
		Expect(agg.Distortions).To(BeEmpty())
	})

	It("averages sentiment and confidence, concatenates indicators", func() {
		records := []*Record{
			{
				Sentiment:  sentiment.Reading{Valence: -0.8, Arousal: 0.6, Confidence: 0.9},
				Confidence: 0.8,
				Distortions: []distortion.Indicator{
					{Category: distortion.CategoryPersecution, Severity: 0.8},
				},
				ProcessingTimeMs: 2.5,
			},
			nil,
			{
				Sentiment:  sentiment.Reading{Valence: 0.2, Arousal: 0.2, Confidence: 0.5},
				Confidence: 0.4,
				Rage: []rage.Indicator{
					{Category: rage.CategoryExclamation, Intensity: 0.3},
				},
				ProcessingTimeMs: 1.5,
			},
		}
		agg := Aggregate(records)
		Expect(agg.Sentiment.Valence).To(BeNumerically("~", -0.3, 1e-9))
		Expect(agg.Sentiment.Arousal).To(BeNumerically("~", 0.4, 1e-9))
		Expect(agg.Sentiment.Confidence).To(BeNumerically("~", 0.7, 1e-9))
		Expect(agg.Confidence).To(BeNumerically("~", 0.6, 1e-9))
		Expect(agg.Distortions).To(HaveLen(1))
		Expect(agg.Rage).To(HaveLen(1))
		Expect(agg.ProcessingTimeMs).To(BeNumerically("~", 4.0, 1e-9))
	})
})
