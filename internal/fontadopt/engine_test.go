package fontadopt

import (
	"bytes"
	"errors"
	"testing"

	"gloss/internal/assetgraph"
	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/services"
)

func donorFontTree() assetgraph.Tree {
	return assetgraph.Tree{
		"m_Script":             assetgraph.Tree{"m_PathID": int64(11)},
		"m_Name":               "NotoSansCJK SDF",
		"hashCode":             float64(111),
		"material":             assetgraph.Tree{"m_PathID": int64(12)},
		"materialHashCode":     float64(112),
		"m_SourceFontFileGUID": "donor-guid",
		"m_FaceInfo": assetgraph.Tree{
			"m_FamilyName": "Noto Sans CJK",
			"m_PointSize":  float64(90),
		},
		"m_AtlasTextures":    []any{assetgraph.Tree{"m_PathID": int64(200)}},
		"m_CreationSettings": assetgraph.Tree{"sourceFontFileGUID": "donor-src"},
		"m_GlyphTable":       []any{assetgraph.Tree{"index": float64(1)}},
	}
}

func targetFontTree() assetgraph.Tree {
	return assetgraph.Tree{
		"m_Script":             assetgraph.Tree{"m_PathID": int64(31)},
		"m_Name":               "LiberationSans SDF",
		"hashCode":             float64(311),
		"material":             assetgraph.Tree{"m_PathID": int64(32)},
		"materialHashCode":     float64(312),
		"m_SourceFontFileGUID": "target-guid",
		"m_FaceInfo": assetgraph.Tree{
			"m_FamilyName": "Liberation Sans",
			"m_PointSize":  float64(36),
		},
		"m_AtlasTextures": []any{assetgraph.Tree{"m_PathID": int64(400)}},
		"m_CreationSettings": assetgraph.Tree{
			"sourceFontFileGUID":      "target-src",
			"referencedFontAssetGUID": "target-ref",
		},
	}
}

func materialTree(withOffsets bool) assetgraph.Tree {
	floats := []any{
		assetgraph.Tree{"first": "_OutlineWidth", "second": float64(0)},
	}
	if withOffsets {
		floats = append(floats,
			assetgraph.Tree{"first": "_UnderlayOffsetX", "second": float64(0.5)},
			assetgraph.Tree{"first": "_UnderlayOffsetY", "second": float64(0.5)},
		)
	}
	return assetgraph.Tree{
		"m_Name":            "FontMat",
		"m_SavedProperties": assetgraph.Tree{"m_Floats": floats},
	}
}

func buildGraphs(t *testing.T, materialOffsets bool) (*memgraph.Container, *memgraph.Container) {
	t.Helper()
	donor := memgraph.New("fonts")
	donor.Add(memgraph.NewObject(100, assetgraph.KindMonoBehaviour, "TMP_FontAsset", donorFontTree()))
	donorTex := memgraph.NewObject(200, assetgraph.KindTexture2D, "", assetgraph.Tree{"m_Name": "NotoAtlas"})
	if err := donorTex.SetImage([]byte{9, 9, 9}, 1024, 1024); err != nil {
		t.Fatalf("set image: %v", err)
	}
	donor.Add(donorTex)

	target := memgraph.New("sharedassets")
	target.Add(memgraph.NewObject(300, assetgraph.KindMonoBehaviour, "TMP_FontAsset", targetFontTree()))
	targetTex := memgraph.NewObject(400, assetgraph.KindTexture2D, "", assetgraph.Tree{"m_Name": "OldAtlas"})
	if err := targetTex.SetImage([]byte{1}, 512, 512); err != nil {
		t.Fatalf("set image: %v", err)
	}
	target.Add(targetTex)
	target.Add(memgraph.NewObject(500, assetgraph.KindMaterial, "", materialTree(materialOffsets)))
	return target, donor
}

func fullConfig() *Config {
	return &Config{
		Source: Namespace{
			FontAssets: &IDList{PathIDs: []int64{100}},
			Textures:   &NamedList{PathIDs: []int64{200}, Names: []string{"NotoAtlas"}},
		},
		Target: Namespace{
			FontAssets: &IDList{PathIDs: []int64{300}},
			Textures:   &NamedList{PathIDs: []int64{400}, Names: []string{"OldAtlas"}},
			Materials:  &NamedList{PathIDs: []int64{500}, Names: []string{"FontMat"}},
		},
	}
}

func TestRunTransplantsAllSections(t *testing.T) {
	target, donor := buildGraphs(t, true)

	summary, err := Run(target, donor, fullConfig(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.FontAssets != 1 || summary.Textures != 1 || summary.Materials != 1 {
		t.Fatalf("summary: %+v", summary)
	}

	fontObj, _ := target.Object(300)
	tree, _ := fontObj.Fields()

	// Donor content with the target's own references and metadata.
	if got := tree.String("m_Name"); got != "LiberationSans SDF" {
		t.Fatalf("m_Name = %q", got)
	}
	if id, _ := tree.RefID("m_Script"); id != 31 {
		t.Fatalf("script ref = %d", id)
	}
	if id, _ := tree.RefID("material"); id != 32 {
		t.Fatalf("material ref = %d", id)
	}
	if got := tree.String("m_SourceFontFileGUID"); got != "target-guid" {
		t.Fatalf("source font guid = %q", got)
	}
	face, _ := tree.Child("m_FaceInfo")
	if got := face.String("m_FamilyName"); got != "Liberation Sans" {
		t.Fatalf("family = %q", got)
	}
	// Donor face content beyond the preserved family name survives.
	if size, _ := face.Float64("m_PointSize"); size != 90 {
		t.Fatalf("point size = %v", size)
	}
	if len(tree.Trees("m_GlyphTable")) != 1 {
		t.Fatal("donor glyph table lost")
	}
	atlases := tree.Trees("m_AtlasTextures")
	if id, _ := atlases[0].Int64("m_PathID"); id != 400 {
		t.Fatalf("atlas ref = %d", id)
	}
	settings, _ := tree.Child("m_CreationSettings")
	if settings.String("sourceFontFileGUID") != "target-src" || settings.String("referencedFontAssetGUID") != "target-ref" {
		t.Fatalf("creation settings: %+v", settings)
	}

	texObj, _ := target.Object(400)
	data, w, h, err := texObj.(assetgraph.Texture).Image()
	if err != nil || !bytes.Equal(data, []byte{9, 9, 9}) || w != 1024 || h != 1024 {
		t.Fatalf("texture payload: %v %v %dx%d", err, data, w, h)
	}

	matObj, _ := target.Object(500)
	matTree, _ := matObj.Fields()
	saved, _ := matTree.Child("m_SavedProperties")
	for _, prop := range saved.Trees("m_Floats") {
		switch prop.String("first") {
		case "_UnderlayOffsetX":
			if v, _ := prop.Float64("second"); v != 0.1 {
				t.Fatalf("offset x = %v", v)
			}
		case "_UnderlayOffsetY":
			if v, _ := prop.Float64("second"); v != -0.1 {
				t.Fatalf("offset y = %v", v)
			}
		}
	}
}

func TestRunInvalidMappingLeavesTargetUntouched(t *testing.T) {
	target, donor := buildGraphs(t, true)
	cfg := fullConfig()
	// Two zipped pairs; the second target id resolves to nothing.
	cfg.Source.FontAssets.PathIDs = []int64{100, 100}
	cfg.Target.FontAssets.PathIDs = []int64{300, 999}

	_, err := Run(target, donor, cfg, nil)
	if !errors.Is(err, services.ErrMapping) {
		t.Fatalf("expected mapping error, got %v", err)
	}

	fontObj, _ := target.Object(300)
	tree, _ := fontObj.Fields()
	if got := tree.String("m_SourceFontFileGUID"); got != "target-guid" {
		t.Fatal("target mutated despite mapping failure")
	}
	texObj, _ := target.Object(400)
	data, _, _, _ := texObj.(assetgraph.Texture).Image()
	if !bytes.Equal(data, []byte{1}) {
		t.Fatal("texture mutated despite mapping failure")
	}
}

func TestRunSkipsAbsentMaterialProperties(t *testing.T) {
	target, donor := buildGraphs(t, false)
	summary, err := Run(target, donor, fullConfig(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Materials != 0 {
		t.Fatalf("material should be skipped: %+v", summary)
	}
}

func TestRunRejectsFontScriptFalsePositives(t *testing.T) {
	target, _ := buildGraphs(t, true)
	// Donor object 100 does not declare TMP_FontAsset; the scan must
	// reject it, emptying the donor font map and skipping the section.
	donorImpostor := memgraph.New("fonts")
	donorImpostor.Add(memgraph.NewObject(100, assetgraph.KindMonoBehaviour, "FontLookalike", donorFontTree()))

	cfg := &Config{
		Source: Namespace{FontAssets: &IDList{PathIDs: []int64{100}}},
		Target: Namespace{FontAssets: &IDList{PathIDs: []int64{300}}},
	}
	summary, err := Run(target, donorImpostor, cfg, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.FontAssets != 0 {
		t.Fatalf("impostor transplanted: %+v", summary)
	}
}

func TestLoadConfigValidatesZipLengths(t *testing.T) {
	cfg := &Config{
		Source: Namespace{FontAssets: &IDList{PathIDs: []int64{1, 2}}},
		Target: Namespace{FontAssets: &IDList{PathIDs: []int64{3}}},
	}
	if err := cfg.Validate(); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	cfg = &Config{
		Target: Namespace{Textures: &NamedList{PathIDs: []int64{1}, Names: []string{}}},
	}
	if err := cfg.Validate(); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
