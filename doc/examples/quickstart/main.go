// Package quickstart provides simple example code for documentation.
package quickstart

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/broady/watson"
	"github.com/broady/watson/discovery"
	"github.com/broady/watson/middleware"
	"github.com/broady/watson/speechtotext"
)

func exampleRecognize(ctx context.Context) {
	// [snippet:recognize]
	stt, err := speechtotext.New(&watson.ServiceOptions{
		Authenticator: watson.NewAPIKeyAuthenticator(os.Getenv("WATSON_STT_APIKEY")),
	})
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open("call.flac")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	results, _, err := stt.Recognize(ctx, &speechtotext.RecognizeOptions{
		Audio: f,
		RecognitionParams: speechtotext.RecognitionParams{
			Model:      "en-US_NarrowbandModel",
			Timestamps: watson.Bool(true),
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results.Results {
		fmt.Println(r.Alternatives[0].Transcript)
	}
	// [/snippet:recognize]
}

func exampleStream(ctx context.Context, stt *speechtotext.Service) {
	// [snippet:stream collapse]
	session, err := stt.RecognizeUsingWebsocket(ctx, &speechtotext.RecognizeUsingWebsocketOptions{
		Audio:          os.Stdin,
		ContentType:    "audio/l16;rate=16000",
		InterimResults: watson.Bool(true),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()
	for res, err := range session.Results() {
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range res.Results {
			fmt.Printf("final=%v %s\n", r.Final, r.Alternatives[0].Transcript)
		}
	}
	// [/snippet:stream]
}

func exampleQuery(ctx context.Context) {
	// [snippet:query]
	disco, err := discovery.New("2019-04-30", &watson.ServiceOptions{
		Authenticator: watson.NewAPIKeyAuthenticator(os.Getenv("WATSON_DISCOVERY_APIKEY")),
		Interceptors:  []watson.UnaryInterceptor{middleware.LoggingInterceptor(slog.Default())},
	})
	if err != nil {
		log.Fatal(err)
	}

	res, _, err := disco.Query(ctx, &discovery.QueryOptions{
		EnvironmentID: "system",
		CollectionID:  "news-en",
		QueryParams: discovery.QueryParams{
			NaturalLanguageQuery: "IBM acquisitions",
			Count:                watson.Int64(5),
			Aggregation:          "term(enriched_text.entities.text,count:10)",
		},
	})
	if watson.IsNotFound(err) {
		log.Fatal("no such collection")
	} else if err != nil {
		log.Fatal(err)
	}
	for _, r := range res.Results {
		fmt.Println(r.ID, r.Fields["title"])
	}
	for _, agg := range res.Aggregations {
		if term, ok := agg.Value.(*discovery.TermAggregation); ok {
			for _, bucket := range term.Results {
				fmt.Println(bucket.Key, bucket.MatchingResults)
			}
		}
	}
	// [/snippet:query]
}

// Keep imports used.
var (
	_ = exampleRecognize
	_ = exampleStream
	_ = exampleQuery
)
