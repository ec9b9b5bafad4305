package mailchimp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestUpdateCampaign_Variants(t *testing.T) {
	tests := []struct {
		name     string
		update   CampaignUpdate
		wantName string
	}{
		{name: "Options", update: UpdateOptions{Options: CampaignCreateOptions{Subject: "Hi"}}, wantName: "options"},
		{name: "Content", update: UpdateContent{Content: CampaignCreateContent{HTML: "<p>x</p>"}}, wantName: "content"},
		{name: "Segment", update: UpdateSegmentOptions{SegmentOptions: CampaignSegmentOptions{Match: MatchAll}}, wantName: "segment_opts"},
		{name: "RSS", update: UpdateRSSOptions{RSS: RSSOptions{URL: "https://example.com/feed"}}, wantName: "rss"},
		{name: "ABSplit", update: UpdateABSplitOptions{ABSplit: ABSplitOptions{SplitTest: "subject"}}, wantName: "absplit"},
		{name: "Auto", update: UpdateAutoOptions{Auto: AutoOptions{Event: "signup"}}, wantName: "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newRecorder(t, "/campaigns/update.json", `{"data":{"id":"c1"},"errors":[]}`)

			got, err := client.UpdateCampaign(context.Background(), "c1", tt.update)
			if err != nil {
				t.Fatalf("UpdateCampaign() failed: %v", err)
			}
			if got.Data.ID != "c1" {
				t.Errorf("Unexpected result: %+v", got)
			}
			if rec.body["cid"] != "c1" || rec.body["name"] != tt.wantName {
				t.Errorf("Expected name %s, got %v", tt.wantName, rec.body["name"])
			}
			if _, ok := rec.body["value"].(map[string]any); !ok {
				t.Errorf("Expected value object, got %T", rec.body["value"])
			}
		})
	}
}

func TestUpdateCampaign_Nil(t *testing.T) {
	tests := []struct {
		name   string
		update CampaignUpdate
	}{
		{name: "Nil interface", update: nil},
		{name: "Nil options", update: (*UpdateOptions)(nil)},
		{name: "Nil content", update: (*UpdateContent)(nil)},
		{name: "Nil segment options", update: (*UpdateSegmentOptions)(nil)},
		{name: "Nil rss options", update: (*UpdateRSSOptions)(nil)},
		{name: "Nil absplit options", update: (*UpdateABSplitOptions)(nil)},
		{name: "Nil auto options", update: (*UpdateAutoOptions)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newRecorder(t, "", `{}`)
			if _, err := client.UpdateCampaign(context.Background(), "c1", tt.update); !errors.Is(err, ErrNilCampaignUpdate) {
				t.Errorf("Expected ErrNilCampaignUpdate, got %v", err)
			}
			if rec.calls != 0 {
				t.Errorf("Expected no requests, got %d", rec.calls)
			}
		})
	}
}

func TestUpdateCampaign_Pointer(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/update.json", `{"data":{"id":"c1"},"errors":[]}`)
	update := &UpdateContent{Content: CampaignCreateContent{HTML: "<p>hi</p>"}}
	if _, err := client.UpdateCampaign(context.Background(), "c1", update); err != nil {
		t.Fatalf("UpdateCampaign() failed: %v", err)
	}
	if rec.body["name"] != "content" {
		t.Errorf("Expected name content, got %v", rec.body["name"])
	}
}

func TestGetCampaigns_SortAndLimit(t *testing.T) {
	tests := []struct {
		name      string
		opts      *GetCampaignsOptions
		wantField string
		wantDir   string
		wantLimit float64
	}{
		{name: "Defaults", opts: nil, wantField: "create_time", wantDir: "DESC", wantLimit: 25},
		{name: "Case insensitive", opts: &GetCampaignsOptions{SortField: "TITLE", SortDir: "asc"}, wantField: "title", wantDir: "ASC", wantLimit: 25},
		{name: "Unknown falls back", opts: &GetCampaignsOptions{SortField: "bogus", SortDir: "sideways"}, wantField: "create_time", wantDir: "DESC", wantLimit: 25},
		{name: "Limit clamped", opts: &GetCampaignsOptions{Page: Page{Limit: 5000}}, wantField: "create_time", wantDir: "DESC", wantLimit: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newRecorder(t, "/campaigns/list.json", `{"total":0,"data":[],"errors":[]}`)
			if _, err := client.GetCampaigns(context.Background(), tt.opts); err != nil {
				t.Fatalf("GetCampaigns() failed: %v", err)
			}
			if rec.body["sort_field"] != tt.wantField {
				t.Errorf("Expected sort_field %s, got %v", tt.wantField, rec.body["sort_field"])
			}
			if rec.body["sort_dir"] != tt.wantDir {
				t.Errorf("Expected sort_dir %s, got %v", tt.wantDir, rec.body["sort_dir"])
			}
			if rec.body["limit"] != tt.wantLimit {
				t.Errorf("Expected limit %v, got %v", tt.wantLimit, rec.body["limit"])
			}
		})
	}
}

func TestGetCampaigns_Filter(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/list.json", `{"total":1,"data":[{"id":"c1","type":"regular","segment_opts":[],"type_opts":[]}],"errors":[]}`)

	got, err := client.GetCampaigns(context.Background(), &GetCampaignsOptions{Filter: &CampaignFilter{ListID: "list-1", Status: "sent"}})
	if err != nil {
		t.Fatalf("GetCampaigns() failed: %v", err)
	}
	if got.Total != 1 || got.Data[0].Type != CampaignRegular {
		t.Errorf("Unexpected result: %+v", got)
	}
	if got.Data[0].SegmentOpts == nil || got.Data[0].SegmentOpts.Match != "" {
		t.Errorf("Expected empty segment options, got %+v", got.Data[0].SegmentOpts)
	}
	filters := rec.opts("filters")
	if filters["list_id"] != "list-1" || filters["status"] != "sent" {
		t.Errorf("Unexpected filters: %v", filters)
	}
	if _, ok := filters["folder_id"]; ok {
		t.Error("Expected unset filters to be omitted")
	}
}

func TestCreateCampaign(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/create.json", `{"id":"c9","title":"Launch","status":"save"}`)

	got, err := client.CreateCampaign(context.Background(), CreateCampaignRequest{
		Options: CampaignCreateOptions{ListID: "list-1", Subject: "Launch", FromEmail: "a@b.c", FromName: "A"},
		Content: CampaignCreateContent{HTML: "<p>Hello</p>"},
		TypeOptions: &CampaignTypeOptions{
			RSS: &RSSOptions{URL: "https://example.com/feed"},
		},
	})
	if err != nil {
		t.Fatalf("CreateCampaign() failed: %v", err)
	}
	if got.ID != "c9" {
		t.Errorf("Unexpected campaign: %+v", got)
	}
	if rec.body["type"] != "regular" {
		t.Errorf("Expected default type regular, got %v", rec.body["type"])
	}
	if _, ok := rec.body["segment_opts"]; ok {
		t.Error("Expected segment_opts to be omitted")
	}
	if rec.opts("type_opts")["rss"] == nil {
		t.Errorf("Expected rss type options, got %v", rec.body["type_opts"])
	}
}

func TestScheduleBatchCampaign_Defaults(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/schedule-batch.json", `{"complete":true}`)
	when := time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	if _, err := client.ScheduleBatchCampaign(context.Background(), "c1", when, nil); err != nil {
		t.Fatalf("ScheduleBatchCampaign() failed: %v", err)
	}
	if rec.body["schedule_time"] != "2024-05-01 12:30:00" {
		t.Errorf("Expected GMT schedule time, got %v", rec.body["schedule_time"])
	}
	if rec.body["num_batches"] != float64(2) || rec.body["stagger_mins"] != float64(5) {
		t.Errorf("Unexpected defaults: %v", rec.body)
	}
}

func TestScheduleCampaign_GroupB(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/schedule.json", `{"complete":true}`)
	a := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if _, err := client.ScheduleCampaign(context.Background(), "c1", a, nil); err != nil {
		t.Fatalf("ScheduleCampaign() failed: %v", err)
	}
	if _, ok := rec.body["schedule_time_b"]; ok {
		t.Error("Expected schedule_time_b to be omitted")
	}

	if _, err := client.ScheduleCampaign(context.Background(), "c1", a, &ScheduleOptions{ScheduleTimeB: a.Add(time.Hour)}); err != nil {
		t.Fatalf("ScheduleCampaign() failed: %v", err)
	}
	if rec.body["schedule_time_b"] != "2024-05-01 13:00:00" {
		t.Errorf("Unexpected schedule_time_b: %v", rec.body["schedule_time_b"])
	}
}

func TestSendCampaignTest_Defaults(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/send-test.json", `{"complete":true}`)

	got, err := client.SendCampaignTest(context.Background(), "c1", []string{"a@b.c"}, nil)
	if err != nil {
		t.Fatalf("SendCampaignTest() failed: %v", err)
	}
	if !got.Complete || rec.body["send_type"] != "html" {
		t.Errorf("Unexpected request: %v", rec.body)
	}
}

func TestGetCampaignContent(t *testing.T) {
	rec, client := newRecorder(t, "/campaigns/content.json", `{"html":"<p>x</p>","text":"x"}`)
	ctx := context.Background()

	got, err := client.GetCampaignContent(ctx, "c1", nil)
	if err != nil {
		t.Fatalf("GetCampaignContent() failed: %v", err)
	}
	if got.Text != "x" || rec.opts("options")["view"] != "archive" {
		t.Errorf("Unexpected request or result: %v %+v", rec.body, got)
	}

	_, err = client.GetCampaignContent(ctx, "c1", &CampaignContentOptions{Email: &EmailParameter{Email: "a", EUID: "b"}})
	if !errors.Is(err, ErrAmbiguousEmailIdentifier) {
		t.Errorf("Expected ErrAmbiguousEmailIdentifier, got %v", err)
	}
}

func TestGetCampaignTemplateContent_EmptyArray(t *testing.T) {
	_, client := newRecorder(t, "/campaigns/template-content.json", `[]`)

	got, err := client.GetCampaignTemplateContent(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetCampaignTemplateContent() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty map, got %v", got)
	}
}

func TestCampaignSegmentOptions_Decode(t *testing.T) {
	var opts CampaignSegmentOptions
	body := `{"match":"any","conditions":[{"field":"date","op":"gt","value":"last_campaign_sent"}]}`
	if err := json.Unmarshal([]byte(body), &opts); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if opts.Match != MatchAny || len(opts.Conditions) != 1 || opts.Conditions[0].Op != "gt" {
		t.Errorf("Unexpected options: %+v", opts)
	}

	if err := json.Unmarshal([]byte(`[]`), &opts); err != nil {
		t.Fatalf("Unmarshal of [] failed: %v", err)
	}
	if opts.Match != "" || opts.Conditions != nil {
		t.Errorf("Expected [] to reset options, got %+v", opts)
	}
}
