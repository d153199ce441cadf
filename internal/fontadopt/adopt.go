package fontadopt

import (
	"errors"
	"fmt"

	"gloss/internal/assetgraph"
)

// adoptFontAsset writes the donor's font content into the target
// object, preserving the target's own references and metadata: script
// and material links keep the target's path ids while face and atlas
// content come from the donor.
func adoptFontAsset(donor, target assetgraph.Object) error {
	donorTree, err := donor.Fields()
	if err != nil {
		return fmt.Errorf("read donor fields: %w", err)
	}
	targetTree, err := target.Fields()
	if err != nil {
		return fmt.Errorf("read target fields: %w", err)
	}

	copyRefID(donorTree, targetTree, "m_Script")
	copyField(donorTree, targetTree, "m_Name")
	copyField(donorTree, targetTree, "hashCode")
	copyRefID(donorTree, targetTree, "material")
	copyField(donorTree, targetTree, "materialHashCode")
	copyField(donorTree, targetTree, "m_SourceFontFileGUID")

	if donorFace, ok := donorTree.Child("m_FaceInfo"); ok {
		if targetFace, ok := targetTree.Child("m_FaceInfo"); ok {
			copyField(donorFace, targetFace, "m_FamilyName")
		}
	}

	donorAtlases := donorTree.Trees("m_AtlasTextures")
	for i, targetAtlas := range targetTree.Trees("m_AtlasTextures") {
		if i >= len(donorAtlases) {
			break
		}
		if id, ok := targetAtlas.Int64("m_PathID"); ok {
			donorAtlases[i].Set("m_PathID", id)
		}
	}

	if donorSettings, ok := donorTree.Child("m_CreationSettings"); ok {
		if targetSettings, ok := targetTree.Child("m_CreationSettings"); ok {
			copyField(donorSettings, targetSettings, "sourceFontFileGUID")
			copyField(donorSettings, targetSettings, "referencedFontAssetGUID")
		}
	}

	// The adopted donor tree becomes the target object's content.
	return target.SaveFields(donorTree)
}

// copyTexture moves the donor's raw image payload and dimensions onto
// the target texture.
func copyTexture(donor, target assetgraph.Object) error {
	donorTex, ok := donor.(assetgraph.Texture)
	if !ok {
		return errors.New("donor object has no texture payload")
	}
	targetTex, ok := target.(assetgraph.Texture)
	if !ok {
		return errors.New("target object has no texture payload")
	}
	data, width, height, err := donorTex.Image()
	if err != nil {
		return fmt.Errorf("read donor image: %w", err)
	}
	return targetTex.SetImage(data, width, height)
}

// patchMaterial forces the underlay offsets when both properties are
// present; absent properties skip the patch without error.
func patchMaterial(material assetgraph.Object) (bool, error) {
	tree, err := material.Fields()
	if err != nil {
		return false, fmt.Errorf("read material fields: %w", err)
	}
	saved, ok := tree.Child("m_SavedProperties")
	if !ok {
		return false, nil
	}

	patched := false
	for _, prop := range saved.Trees("m_Floats") {
		switch prop.String("first") {
		case underlayOffsetXProp:
			prop.Set("second", underlayOffsetX)
			patched = true
		case underlayOffsetYProp:
			prop.Set("second", underlayOffsetY)
			patched = true
		}
	}
	if !patched {
		return false, nil
	}
	return true, material.SaveFields(tree)
}

func copyField(donor, target assetgraph.Tree, key string) {
	if target.Has(key) {
		donor.Set(key, target[key])
	}
}

func copyRefID(donor, target assetgraph.Tree, key string) {
	id, ok := target.RefID(key)
	if !ok {
		return
	}
	ref, ok := donor.Child(key)
	if !ok {
		ref = assetgraph.Tree{}
		donor.Set(key, ref)
	}
	ref.Set("m_PathID", id)
}
