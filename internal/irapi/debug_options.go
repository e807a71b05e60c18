package irapi

// PlacementVerificationEnabled enables the post-condition check of the code placement pass:
// every value recorded before placement must end up placed unless it is dead. This is fairly
// cheap but pointless outside development, so flip this to false for release builds.
const PlacementVerificationEnabled = true
