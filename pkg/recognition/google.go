package recognition

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// GoogleRecognizer implements Recognizer using the Cloud Speech-to-Text
// long-running recognition API.
type GoogleRecognizer struct {
	client *speech.Client
}

func NewGoogleRecognizer(ctx context.Context) (*GoogleRecognizer, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognition: create client: %w", err)
	}
	return &GoogleRecognizer{client: client}, nil
}

func (r *GoogleRecognizer) Recognize(ctx context.Context, audioURI string) ([]Segment, error) {
	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: audioURI},
		},
	}

	op, err := r.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recognition: start: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognition: wait: %w", err)
	}

	segments := make([]Segment, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		top := result.Alternatives[0]
		segments = append(segments, Segment{
			Transcript: top.Transcript,
			Confidence: top.Confidence,
		})
	}
	return segments, nil
}

func (r *GoogleRecognizer) Close() error {
	return r.client.Close()
}
