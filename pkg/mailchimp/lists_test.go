package mailchimp

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetLists_Defaults(t *testing.T) {
	rec, client := newRecorder(t, "/lists/list.json", `{"total":1,"data":[{"id":"list-1","name":"News","stats":{"member_count":3}}],"errors":[]}`)

	got, err := client.GetLists(context.Background(), &GetListsOptions{SortField: "Web", Page: Page{Limit: 250}})
	if err != nil {
		t.Fatalf("GetLists() failed: %v", err)
	}
	if got.Total != 1 || got.Data[0].Stats.MemberCount != 3 {
		t.Errorf("Unexpected result: %+v", got)
	}
	if rec.body["sort_field"] != "web" || rec.body["sort_dir"] != "DESC" || rec.body["limit"] != float64(100) {
		t.Errorf("Unexpected request: %v", rec.body)
	}
	if _, ok := rec.body["filters"]; ok {
		t.Error("Expected filters to be omitted")
	}
}

func TestGetListAbuseReports_Clamp(t *testing.T) {
	rec, client := newRecorder(t, "/lists/abuse-reports.json", `{"total":0,"data":[]}`)
	ctx := context.Background()

	if _, err := client.GetListAbuseReports(ctx, "list-1", nil); err != nil {
		t.Fatalf("GetListAbuseReports() failed: %v", err)
	}
	if rec.body["limit"] != float64(500) {
		t.Errorf("Expected default limit 500, got %v", rec.body["limit"])
	}
	if _, ok := rec.body["since"]; ok {
		t.Error("Expected since to be omitted")
	}

	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := client.GetListAbuseReports(ctx, "list-1", &AbuseReportsOptions{Page: Page{Limit: 5000}, Since: since}); err != nil {
		t.Fatalf("GetListAbuseReports() failed: %v", err)
	}
	if rec.body["limit"] != float64(1000) || rec.body["since"] != "2024-02-01 00:00:00" {
		t.Errorf("Unexpected request: %v", rec.body)
	}
}

func TestUpdateListInterestGrouping(t *testing.T) {
	rec, client := newRecorder(t, "/lists/interest-grouping-update.json", `{"complete":true}`)
	ctx := context.Background()

	if _, err := client.UpdateListInterestGrouping(ctx, "list-1", 4, RenameGrouping("Topics")); err != nil {
		t.Fatalf("UpdateListInterestGrouping() failed: %v", err)
	}
	if rec.body["name"] != "name" || rec.body["value"] != "Topics" || rec.body["grouping_id"] != float64(4) {
		t.Errorf("Unexpected request: %v", rec.body)
	}

	if _, err := client.UpdateListInterestGrouping(ctx, "list-1", 4, ChangeGroupingType(GroupingRadio)); err != nil {
		t.Fatalf("UpdateListInterestGrouping() failed: %v", err)
	}
	if rec.body["name"] != "type" || rec.body["value"] != "radio" {
		t.Errorf("Unexpected request: %v", rec.body)
	}

	calls := rec.calls
	if _, err := client.UpdateListInterestGrouping(ctx, "list-1", 4, GroupingUpdate{}); !errors.Is(err, ErrEmptyGroupingUpdate) {
		t.Errorf("Expected ErrEmptyGroupingUpdate, got %v", err)
	}
	if rec.calls != calls {
		t.Error("Expected no request for an empty update")
	}
}

func TestAddListInterestGrouping(t *testing.T) {
	rec, client := newRecorder(t, "/lists/interest-grouping-add.json", `{"id":31}`)

	got, err := client.AddListInterestGrouping(context.Background(), "list-1", "Topics", "", []string{"Go", "Rust"})
	if err != nil {
		t.Fatalf("AddListInterestGrouping() failed: %v", err)
	}
	if got.ID != 31 || rec.body["type"] != "checkboxes" {
		t.Errorf("Unexpected request or result: %v %+v", rec.body, got)
	}
}

func TestGetListInterestGroupings(t *testing.T) {
	rec, client := newRecorder(t, "/lists/interest-groupings.json",
		`[{"id":1,"name":"Topics","form_field":"checkboxes","groups":[{"bit":"1","name":"Go","subscribers":4}]}]`)

	got, err := client.GetListInterestGroupings(context.Background(), "list-1", true)
	if err != nil {
		t.Fatalf("GetListInterestGroupings() failed: %v", err)
	}
	if len(got) != 1 || got[0].Groups[0].Subscribers != 4 {
		t.Errorf("Unexpected result: %+v", got)
	}
	if rec.body["counts"] != true {
		t.Errorf("Expected counts true, got %v", rec.body["counts"])
	}
}

func TestStaticSegmentMembers(t *testing.T) {
	rec, client := newRecorder(t, "/lists/static-segment-members-add.json",
		`{"success_count":1,"errors":[{"email":{"email":"x@b.c"},"code":215,"error":"not on list"}]}`)

	got, err := client.AddStaticSegmentMembers(context.Background(), "list-1", 9,
		[]EmailParameter{{Email: "a@b.c"}, {Email: "x@b.c"}, {}})
	if err != nil {
		t.Fatalf("AddStaticSegmentMembers() failed: %v", err)
	}
	if got.SuccessCount+got.ErrorCount != 3 {
		t.Errorf("Expected counts to sum to 3, got %+v", got)
	}
	if rec.body["seg_id"] != float64(9) || len(rec.body["batch"].([]any)) != 2 {
		t.Errorf("Unexpected request: %v", rec.body)
	}
}

func TestGetSegmentsForList(t *testing.T) {
	rec, client := newRecorder(t, "/lists/segments.json",
		`{"static":[{"id":1,"name":"VIP","member_count":2}],"saved":[{"id":2,"name":"Recent","segment_opts":{"match":"all","conditions":[]}}]}`)
	ctx := context.Background()

	got, err := client.GetSegmentsForList(ctx, "list-1", SegmentAny)
	if err != nil {
		t.Fatalf("GetSegmentsForList() failed: %v", err)
	}
	if len(got.Static) != 1 || got.Saved[0].SegmentOpts.Match != MatchAll {
		t.Errorf("Unexpected result: %+v", got)
	}
	if _, ok := rec.body["type"]; ok {
		t.Error("Expected type to be omitted")
	}

	if _, err := client.GetSegmentsForList(ctx, "list-1", SegmentSaved); err != nil {
		t.Fatalf("GetSegmentsForList() failed: %v", err)
	}
	if rec.body["type"] != "saved" {
		t.Errorf("Expected type saved, got %v", rec.body["type"])
	}
}

func TestAddWebhook(t *testing.T) {
	rec, client := newRecorder(t, "/lists/webhook-add.json", `{"id":5}`)
	ctx := context.Background()

	if _, err := client.AddWebhook(ctx, "list-1", "https://example.com/hook", nil); err != nil {
		t.Fatalf("AddWebhook() failed: %v", err)
	}
	if _, ok := rec.body["actions"]; ok {
		t.Error("Expected actions to be omitted")
	}

	actions := AllWebhookActions()
	actions.Campaign = false
	got, err := client.AddWebhook(ctx, "list-1", "https://example.com/hook", &AddWebhookOptions{Actions: &actions})
	if err != nil {
		t.Fatalf("AddWebhook() failed: %v", err)
	}
	if got.ID != 5 || rec.opts("actions")["campaign"] != false || rec.opts("actions")["upemail"] != true {
		t.Errorf("Unexpected request: %v", rec.body)
	}
}

func TestMergeVars(t *testing.T) {
	rec, client := newRecorder(t, "/lists/merge-vars.json",
		`{"success_count":1,"error_count":0,"data":[{"id":"list-1","name":"News","merge_vars":[{"tag":"FNAME","req":false,"field_type":"text"}]}],"errors":[]}`)

	got, err := client.GetMergeVars(context.Background(), []string{"list-1"})
	if err != nil {
		t.Fatalf("GetMergeVars() failed: %v", err)
	}
	if got.Data[0].Vars[0].Tag != "FNAME" {
		t.Errorf("Unexpected result: %+v", got)
	}
	if ids := rec.body["id"].([]any); len(ids) != 1 || ids[0] != "list-1" {
		t.Errorf("Unexpected request: %v", rec.body)
	}
}
