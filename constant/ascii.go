package constant

// AsciiArtLogo is rendered by the root command's long help output.
const AsciiArtLogo = `
   _ __ ___  (_)_  __ |  |_ __ _ _ __   ___
 | '_ ` + "`" + ` _ \ | \ \/ / |  __/ _` + "`" + ` | '_ \ / _ \
 | | | | | || |>  <  |  || (_| | |_) |  __/
 |_| |_| |_||_/_/\_\  \__\__,_| .__/ \___|
                              |_|`
